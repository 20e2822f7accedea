// arctool prints the launch velocity and sampled path of a grapple arc.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/hookshot/pkg/math"
	"github.com/Faultbox/hookshot/pkg/trajectory"
)

// vecFlag parses "x,y,z".
type vecFlag struct {
	v math.Vec3
}

func (f *vecFlag) String() string {
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f *vecFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float32
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = float32(n)
	}
	f.v = math.Vec3{X: out[0], Y: out[1], Z: out[2]}
	return nil
}

func main() {
	var from, to vecFlag
	fs := flag.NewFlagSet("arctool", flag.ExitOnError)
	fs.Var(&from, "from", "Launch position x,y,z")
	fs.Var(&to, "to", "Target position x,y,z")
	apex := fs.Float64("apex", 2, "Arc height above the launch point")
	gravity := fs.Float64("gravity", 9.81, "Gravity magnitude")
	samples := fs.Int("samples", 10, "Number of segments to print (0 = none)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `arctool - ballistic arc calculator

Usage:
  arctool -from x,y,z -to x,y,z [-apex h] [-gravity g] [-samples n]

Example:
  arctool -from 0,1,0 -to 9,1.5,0 -apex 2.5`)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if *gravity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: gravity must be positive")
		os.Exit(1)
	}

	report(from.v, to.v, float32(*apex), float32(*gravity), *samples)
}

func report(from, to math.Vec3, apex, gravity float32, samples int) {
	used := trajectory.ClampApex(apex, to.Y-from.Y)
	v := trajectory.SolveLaunchVelocity(from, to, apex, gravity)
	t := trajectory.FlightTime(from, to, apex, gravity)
	top := trajectory.Apex(from, v, gravity)

	fmt.Printf("From:     %s\n", formatVec(from))
	fmt.Printf("To:       %s\n", formatVec(to))
	if used != apex {
		fmt.Printf("Apex:     %.3f (raised from %.3f)\n", used, apex)
	} else {
		fmt.Printf("Apex:     %.3f\n", used)
	}
	fmt.Printf("Velocity: %s (speed %.3f)\n", formatVec(v), v.Length())
	fmt.Printf("Flight:   %.3fs\n", t)
	fmt.Printf("Peak:     %s\n", formatVec(top))

	if samples < 1 {
		return
	}
	fmt.Println()
	fmt.Println("   t        x        y        z")
	for i, p := range trajectory.Points(from, to, apex, gravity, samples) {
		ts := t * float32(i) / float32(samples)
		fmt.Printf("%6.3f %8.3f %8.3f %8.3f\n", ts, p.X, p.Y, p.Z)
	}
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

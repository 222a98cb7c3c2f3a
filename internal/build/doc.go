// Package build runs one complete site build.
//
// The pipeline is load → plan → materialize assets → render and write →
// verify links. Planning runs before anything touches the output directory,
// so naming conflicts never leave a half-written site behind. All execution
// paths (the CLI and tests) route through Service.Run.
package build

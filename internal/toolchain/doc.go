// Package toolchain wraps the external cross-compilation tool. It knows
// how to locate the binary, translate a recipe into the tool's argument
// list ({build, optional --release, optional --target}), run it once
// while streaming output, and gate on a minimum tool version. The tool's
// own argument grammar beyond that is an opaque contract.
package toolchain

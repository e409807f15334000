// Package shadow implements the scoped relocation of the Cargo config
// file around an external tool invocation. Acquire renames the config
// file to its backup path and records a journal entry; Release renames
// it back and clears the journal. The journal survives a crash between
// the two renames so a later restore can recover the file.
package shadow

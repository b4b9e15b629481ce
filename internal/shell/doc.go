// Package shell generates the text each supported shell evaluates to install
// the mise wrapper function, register the directory-change and prompt hooks,
// apply environment mutations, and undo all of it again on deactivate.
// Nothing here runs a shell: every function returns a script as a string.
package shell

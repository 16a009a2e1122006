package rangeset

// check reports contract violations. A violated precondition is a programmer
// error, not a recoverable runtime condition, so it panics when checks are
// compiled in and is undefined behaviour otherwise.
func check(cond bool, msg string) {
	if checksEnabled && !cond {
		panic("rangeset: " + msg)
	}
}

package broken

func mismatch() int {
	return "not an int"
}

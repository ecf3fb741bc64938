package main

// isValidNick checks if a nickname is valid.
//
// Note: Nicks are not canonicalized. "Alice" and "alice" are distinct.
func isValidNick(maxLen int, n string) bool {
	if len(n) == 0 || len(n) > maxLen {
		return false
	}

	// Accept only letters, digits, or _. RFC is more lenient.
	for i, char := range n {
		if char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' {
			continue
		}

		if char >= '0' && char <= '9' {
			// No digits in first position.
			if i == 0 {
				return false
			}
			continue
		}

		if char == '_' {
			continue
		}

		return false
	}

	return true
}

// isValidChannel checks a channel name for validity.
//
// Note: Like nicks, channel names are not canonicalized.
func isValidChannel(maxLen int, c string) bool {
	if len(c) == 0 || len(c) > maxLen {
		return false
	}

	for i, char := range c {
		if i == 0 {
			// Only # channels.
			if char == '#' {
				continue
			}
			return false
		}

		if char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' {
			continue
		}

		if char >= '0' && char <= '9' {
			continue
		}

		if char == '_' || char == '-' {
			continue
		}

		return false
	}

	return true
}

func isNumericCommand(command string) bool {
	for _, c := range command {
		if c < 48 || c > 57 {
			return false
		}
	}
	return true
}

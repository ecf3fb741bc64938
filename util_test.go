package main

import "testing"

func TestIsValidNick(t *testing.T) {
	tests := []struct {
		input  string
		output bool
	}{
		{"alice", true},
		{"Alice", true},
		{"alice_99", true},
		{"_alice", true},
		{"", false},
		{"9alice", false},
		{"al-ice", false},
		{"#alice", false},
		{"al.ice", false},
		{"aaaaaaaaaaa", false},
	}

	for _, test := range tests {
		output := isValidNick(10, test.input)
		if output != test.output {
			t.Errorf("isValidNick(10, %q) = %v, wanted %v", test.input, output,
				test.output)
		}
	}
}

func TestIsValidChannel(t *testing.T) {
	tests := []struct {
		input  string
		output bool
	}{
		{"#rust", true},
		{"#Rust", true},
		{"#rust-lang", true},
		{"#c_99", true},
		{"rust", false},
		{"", false},
		{"#rust.lang", false},
		{"&rust", false},
		{"#aaaaaaaaaa", false},
	}

	for _, test := range tests {
		output := isValidChannel(10, test.input)
		if output != test.output {
			t.Errorf("isValidChannel(10, %q) = %v, wanted %v", test.input,
				output, test.output)
		}
	}
}

func TestIsNumericCommand(t *testing.T) {
	tests := []struct {
		input  string
		output bool
	}{
		{"001", true},
		{"436", true},
		{"PRIVMSG", false},
		{"4a1", false},
	}

	for _, test := range tests {
		output := isNumericCommand(test.input)
		if output != test.output {
			t.Errorf("isNumericCommand(%q) = %v, wanted %v", test.input,
				output, test.output)
		}
	}
}

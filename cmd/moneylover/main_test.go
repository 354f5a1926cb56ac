package main

import "testing"

func TestCommandSet(t *testing.T) {
	want := map[string]bool{
		"login":  false,
		"user":   false,
		"wallet": false,
		"cat":    false,
		"tx":     false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestWalletSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range walletCmd.Commands() {
		names[cmd.Name()] = true
	}
	if !names["ls"] {
		t.Error("expected 'wallet ls' subcommand")
	}
}

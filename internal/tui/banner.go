package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by interactive commands.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-amber gradient
	s1 := termenv.String(`                     _            `).Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(`  _ __   __ _ _ __| | ___ _   _ `).Foreground(p.Color("#34d399"))
	s3 := termenv.String(` | '_ \ / _` + "`" + ` | '__| |/ _ \ | | |`).Foreground(p.Color("#a3e635"))
	s4 := termenv.String(` | |_) | (_| | |  | |  __/ |_| |`).Foreground(p.Color("#fbbf24"))
	s5 := termenv.String(` | .__/ \__,_|_|  |_|\___|\__, |`).Foreground(p.Color("#fb923c"))
	s6 := termenv.String(` |_|                      |___/ `).Foreground(p.Color("#f87171"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}

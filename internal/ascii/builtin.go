// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ascii

import "github.com/charmbracelet/lipgloss"

type builtin struct {
	big, small []string
	color      lipgloss.Color
	artist     string
}

var arts = map[string]builtin{
	"linux": {
		big: []string{
			`        #####        `,
			`       #######       `,
			`       ##O#O##       `,
			`       #VVVVV#       `,
			`     ##  VVV  ##     `,
			`    #          ##    `,
			`   #            ##   `,
			`   #            ###  `,
			`  QQ#           ##Q  `,
			`QQQQQQ#       #QQQQQQ`,
			`QQQQQQQ#     #QQQQQQQ`,
			`  QQQQQ#######QQQQQ  `,
		},
		small: []string{
			`    .--.   `,
			`   |o_o |  `,
			`   |:_/ |  `,
			`  //   \ \ `,
			` (|     | )`,
			`/'\_   _/'\`,
			`\___)=(___/`,
		},
		color:  "12",
		artist: "sysview contributors",
	},
	"darwin": {
		big: []string{
			`                 ,xNMM.`,
			`               .OMMMMo `,
			`               lMM"    `,
			`     .;loddo:.  .olloddol;.`,
			`   cKMMMMMMMMMMNWMMMMMMMMMM0:`,
			` .KMMMMMMMMMMMMMMMMMMMMMMMWd.`,
			` XMMMMMMMMMMMMMMMMMMMMMMMX.`,
			`;MMMMMMMMMMMMMMMMMMMMMMMM: `,
			`:MMMMMMMMMMMMMMMMMMMMMMMM: `,
			`.MMMMMMMMMMMMMMMMMMMMMMMMX.`,
			` kMMMMMMMMMMMMMMMMMMMMMMMMWd.`,
			` 'XMMMMMMMMMMMMMMMMMMMMMMMMMMk`,
			`  'XMMMMMMMMMMMMMMMMMMMMMMMMK.`,
			`    kMMMMMMMMMMMMMMMMMMMMMMd `,
			`     ;KMMMMMMMWXXWMMMMMMMk.  `,
			`       "cooc*"    "*coo'"    `,
		},
		small: []string{
			"        .:'  ",
			"    __ :'__  ",
			" .'`  `-'  ``. ",
			":          .-'",
			":         :  ",
			" :         `-;",
			"  `.__.-.__.' ",
		},
		color:  "10",
		artist: "sysview contributors",
	},
	"windows": {
		big: []string{
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`                                  `,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
			`################  ################`,
		},
		small: []string{
			`######  ######`,
			`######  ######`,
			`######  ######`,
			`              `,
			`######  ######`,
			`######  ######`,
			`######  ######`,
		},
		color:  "14",
		artist: "sysview contributors",
	},
	"freebsd": {
		big: []string{
			"```                        `",
			"  ` `.....---.......--.```   -/",
			"  +o   .--`         /y:`      +.",
			"   yo`:.            :o      `+-",
			"    y/               -/`   -o/",
			"   .-                  ::/sy+:.",
			"   /                     `--  /",
			"  `:                          :`",
			"  `:                          :`",
			"   /                          /",
			"   .-                        -.",
			"    --                      -.",
			"     `:`                  `:`",
			"       .--             `--.",
			"          .---.....----.",
		},
		small: []string{
			`/\,-'''''-,/\`,
			`\_)       (_/`,
			`|           |`,
			`|           |`,
			` ;         ; `,
			`  '-_____-'  `,
		},
		color:  "9",
		artist: "sysview contributors",
	},
	"generic": {
		big: []string{
			` _______________ `,
			`|  ___________  |`,
			`| |           | |`,
			`| |   >_      | |`,
			`| |           | |`,
			`| |___________| |`,
			`|_______________|`,
			`    _[_____]_    `,
			`   |_________|   `,
		},
		small: []string{
			` ________ `,
			`|  >_    |`,
			`|________|`,
			`  _[__]_  `,
		},
		color:  "7",
		artist: "sysview contributors",
	},
}

// Credit names the artist of a built-in art.
type Credit struct {
	System string
	Artist string
}

// Artists returns a credit for every built-in art, ordered by system.
func Artists() []Credit {
	systems := Systems()
	credits := make([]Credit, 0, len(systems))
	for _, s := range systems {
		credits = append(credits, Credit{System: s, Artist: arts[s].artist})
	}
	return credits
}

// Systems returns the operating systems that carry built-in art.
func Systems() []string {
	return []string{"darwin", "freebsd", "generic", "linux", "windows"}
}

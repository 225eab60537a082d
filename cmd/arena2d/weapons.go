package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvistberg/arena2d/internal/session"
)

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "List weapon kinds for brawl rosters",
	Long: `Show the weapon kinds a brawl roster entry can use, with their base
damage and attack style. Use the key in the 'weapon' field of a fighter in
a brawl config YAML.

Example:
  roster:
    - name: Slash
      weapon: sword
      team: 0`,
	Run: runWeapons,
}

func runWeapons(_ *cobra.Command, _ []string) {
	tuning := session.DefaultTuning()

	fmt.Printf("  %-10s  %-16s  %6s  %s\n", "Key", "Name", "Damage", "Style")
	fmt.Printf("  %-10s  %-16s  %6s  %s\n", "---", "----", "------", "-----")

	for _, key := range session.KindKeys() {
		kind, ok := session.ParseKind(key)
		if !ok {
			continue
		}

		style := "melee"
		switch {
		case kind.AreaEffect():
			style = "projectile (area)"
		case kind.FiresProjectiles():
			style = "projectile"
		case kind == session.KindUnarmed:
			style = "body contact"
		}

		fmt.Printf("  %-10s  %-16s  %6d  %s\n", key, kind.String(), tuning.BaseDamage[kind], style)
	}
}

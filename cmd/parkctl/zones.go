package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

func zonesCommand() *cli.Command {
	return &cli.Command{
		Name:  "zones",
		Usage: "browse parking zones",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "zone descriptions inside the default campus bounds",
				Action: func(ctx *cli.Context) error {
					a := newApp(ctx)
					descs, err := a.client.ZoneDescriptions(ctx.Context)
					if err != nil {
						return err
					}
					sort.Strings(descs)
					for _, d := range descs {
						fmt.Fprintln(a.out, d)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "polygon of one zone",
				ArgsUsage: "<zone-code>",
				Action: func(ctx *cli.Context) error {
					code, err := zoneArg(ctx)
					if err != nil {
						return err
					}
					a := newApp(ctx)
					zc, err := a.client.ZoneCoordinates(ctx.Context, code)
					if err != nil {
						return err
					}
					if zc.Stale.Stale {
						fmt.Fprintln(a.out, warnStyle.Render("stale data: "+deref(zc.StaleReason)))
					}
					fmt.Fprintf(a.out, "%s %s (%d points)\n", titleStyle.Render("zone"), code, len(zc.Coordinates))
					for _, p := range zc.Coordinates {
						fmt.Fprintf(a.out, "  %.6f, %.6f\n", p[0], p[1])
					}
					return nil
				},
			},
			{
				Name:      "search",
				Usage:     "find zone codes whose description contains the query",
				ArgsUsage: "<query>",
				Action: func(ctx *cli.Context) error {
					a := newApp(ctx)
					m, err := a.client.DescriptionToZones(ctx.Context)
					if err != nil {
						return err
					}
					renderZoneMatches(a.out, searchZones(m, strings.Join(ctx.Args().Slice(), " ")))
					return nil
				},
			},
		},
	}
}

type zoneMatch struct {
	Description string
	Code        string
}

// searchZones 不区分大小写的子串匹配，按描述排序
func searchZones(descToCode map[string]string, query string) []zoneMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]zoneMatch, 0)
	for desc, code := range descToCode {
		if q == "" || strings.Contains(strings.ToLower(desc), q) || strings.Contains(strings.ToLower(code), q) {
			out = append(out, zoneMatch{Description: desc, Code: code})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

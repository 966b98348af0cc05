package main

import (
	"Revamp/internal/favorites"
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"
)

func favoritesCommand() *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "manage favorite zones",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list favorites in display order",
				Action: withFavorites(func(ctx *cli.Context, a *app) error { return nil }),
			},
			{
				Name:      "add",
				Usage:     "save a zone as favorite",
				ArgsUsage: "<zone-code>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "description", Aliases: []string{"d"}}},
				Action: withFavorites(func(ctx *cli.Context, a *app) error {
					code, err := zoneArg(ctx)
					if err != nil {
						return err
					}
					return a.engine.Add(ctx.Context, code, optional(ctx.String("description")))
				}),
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "remove favorites by zone code",
				ArgsUsage: "<zone-code>...",
				Action: withFavorites(func(ctx *cli.Context, a *app) error {
					if ctx.NArg() == 0 {
						return cli.Exit("zone code required", 1)
					}
					p := pool.New().WithErrors()
					for _, code := range ctx.Args().Slice() {
						p.Go(func() error {
							rec, ok := a.engine.Find(code)
							if !ok {
								return fmt.Errorf("zone %s is not a favorite: %w", code, favorites.ErrNotFound)
							}
							return a.engine.Remove(ctx.Context, rec.ID)
						})
					}
					return p.Wait()
				}),
			},
			{
				Name:      "toggle",
				Usage:     "add the zone if absent, remove it otherwise",
				ArgsUsage: "<zone-code>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "description", Aliases: []string{"d"}}},
				Action: withFavorites(func(ctx *cli.Context, a *app) error {
					code, err := zoneArg(ctx)
					if err != nil {
						return err
					}
					return a.engine.Toggle(ctx.Context, code, optional(ctx.String("description")))
				}),
			},
			{
				Name:      "reorder",
				Usage:     "set the display order, every favorite listed once",
				ArgsUsage: "<zone-code>...",
				Action: withFavorites(func(ctx *cli.Context, a *app) error {
					ordered := make([]favorites.Record, 0, ctx.NArg())
					for _, code := range ctx.Args().Slice() {
						rec, ok := a.engine.Find(code)
						if !ok {
							return fmt.Errorf("zone %s is not a favorite: %w", code, favorites.ErrNotFound)
						}
						ordered = append(ordered, rec)
					}
					return a.engine.Reorder(ctx.Context, ordered)
				}),
			},
			{
				Name:      "use",
				Usage:     "record that favorites were used",
				ArgsUsage: "<zone-code>...",
				Action: withFavorites(func(ctx *cli.Context, a *app) error {
					var wg conc.WaitGroup
					for _, code := range ctx.Args().Slice() {
						rec, ok := a.engine.Find(code)
						if !ok {
							continue
						}
						wg.Go(func() { a.engine.RecordUsage(ctx.Context, rec.ID) })
					}
					wg.Wait()
					return nil
				}),
			},
		},
	}
}

// withFavorites 恢复会话、执行一次操作，然后打印本地收藏
func withFavorites(fn func(ctx *cli.Context, a *app) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		a := newApp(ctx)
		if err := a.signedIn(ctx); err != nil {
			return err
		}
		err := fn(ctx, a)
		renderFavorites(a.out, a.engine.List())
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			return err
		}
		if err != nil {
			return errors.New(describe(err))
		}
		return nil
	}
}

// describe 并发操作合并的错误逐个展开
func describe(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			parts = append(parts, describe(e))
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%s (%s)", favorites.Message(err), favorites.KindOf(err))
}

func zoneArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", cli.Exit("exactly one zone code required", 1)
	}
	return ctx.Args().First(), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

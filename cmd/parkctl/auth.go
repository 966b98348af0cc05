package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"REVAMP_PASSWORD"}},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and save the access token",
		Flags: credentialFlags(),
		Action: func(ctx *cli.Context) error {
			a := newApp(ctx)
			password, err := readPassword(ctx)
			if err != nil {
				return err
			}
			if err := a.session.Login(ctx.Context, ctx.String("email"), password); err != nil {
				return err
			}
			user, _ := a.session.User()
			fmt.Fprintf(a.out, "%s %s\n", okStyle.Render("logged in as"), user.Email)
			renderFavorites(a.out, a.engine.List())
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: append(credentialFlags(), &cli.StringFlag{Name: "name", Usage: "full name"}),
		Action: func(ctx *cli.Context) error {
			a := newApp(ctx)
			password, err := readPassword(ctx)
			if err != nil {
				return err
			}
			if err := a.session.Register(ctx.Context, ctx.String("email"), password, ctx.String("name")); err != nil {
				return err
			}
			user, _ := a.session.User()
			fmt.Fprintf(a.out, "%s %s\n", okStyle.Render("registered"), user.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the saved access token",
		Action: func(ctx *cli.Context) error {
			a := newApp(ctx)
			a.session.Logout()
			fmt.Fprintln(a.out, okStyle.Render("logged out"))
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed in user",
		Action: func(ctx *cli.Context) error {
			a := newApp(ctx)
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			user, _ := a.session.User()
			renderUser(a.out, a.client.BaseURL(), user, a.engine.Store().Len())
			return nil
		},
	}
}

// readPassword 未通过参数或环境变量提供时从标准输入读取
func readPassword(ctx *cli.Context) (string, error) {
	if p := ctx.String("password"); p != "" {
		return p, nil
	}
	return readPasswordFrom(os.Stdin, os.Stderr)
}

// readPasswordFrom 终端上关闭回显读取，管道输入时读一行
func readPasswordFrom(in *os.File, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "password: ")
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package main

import (
	"Revamp/internal/favorites"
	"Revamp/internal/session"
	"Revamp/pkg/apiclient"
	"io"

	"github.com/urfave/cli/v2"
)

// app 一次命令调用的客户端对象
type app struct {
	client  *apiclient.Client
	session *session.Session
	engine  *favorites.Engine
	out     io.Writer
}

func newApp(ctx *cli.Context) *app {
	client := apiclient.New(ctx.String("api-url"), ctx.Duration("timeout"))

	path := ctx.String("token-file")
	if path == "" {
		path = session.DefaultTokenPath()
	}
	engine := favorites.NewEngine(client)
	return &app{
		client:  client,
		session: session.New(client, &session.FileTokenStore{Path: path}, engine),
		engine:  engine,
		out:     ctx.App.Writer,
	}
}

// signedIn 恢复会话，未登录时报错。恢复成功时收藏已经拉取完毕。
func (a *app) signedIn(ctx *cli.Context) error {
	if err := a.session.Restore(ctx.Context); err != nil {
		return err
	}
	if !a.session.Authenticated() {
		return cli.Exit("not logged in, run `parkctl login` first", 1)
	}
	if err := a.engine.Err(); err != nil {
		return err
	}
	return nil
}

package cli

import "fmt"

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Sessions.SignOut(); err != nil {
		return err
	}
	if err := ctx.Prefs.ClearLastProfile(); err != nil {
		return err
	}
	fmt.Println("Signed out. A new anonymous identity will be created on next use.")
	return nil
}

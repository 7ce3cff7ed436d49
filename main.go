package main

import (
	"fmt"
	"os"

	consolecmd "paisahub/finassist/cmd/console"
	exportcmd "paisahub/finassist/cmd/export"
	"paisahub/finassist/cmd/importer"
	"paisahub/finassist/cmd/parse"
	"paisahub/finassist/cmd/root"
	"paisahub/finassist/cmd/serve"
	"paisahub/finassist/cmd/suggest"
	"paisahub/finassist/cmd/train"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(consolecmd.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(train.Cmd)
	root.Cmd.AddCommand(exportcmd.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

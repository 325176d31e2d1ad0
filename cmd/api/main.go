package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "genesis-dashboard",
		Usage: "Dashboard de swaps de tokens Virtual Genesis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Archivo .env a cargar antes de leer la configuración",
				EnvVars: []string{"ENV_FILE"},
				Value:   ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Levanta el servidor HTTP del dashboard",
				Action: serve,
			},
			{
				Name:   "export",
				Usage:  "Ejecuta el pipeline para un token y escribe la tabla resultante",
				Flags:  exportFlags(),
				Action: export,
			},
		},
		// Sin subcomando se levanta el servidor
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

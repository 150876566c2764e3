package main

import (
	"fmt"

	"github.com/igoryan-dao/ricochet-tutor/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser form UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, cfg, err := buildTutor()
		if err != nil {
			return err
		}

		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		fmt.Printf("Python Tutor form at http://localhost%s\n", displayAddr(addr))

		return web.NewServer(t).ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8501", "Listen address")
}

// displayAddr trims a host so ":8501" and "0.0.0.0:8501" both print as a port
func displayAddr(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}

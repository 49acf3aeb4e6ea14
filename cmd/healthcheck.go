package cmd

import (
	"fmt"
	"net"
	"net/http"

	"github.com/hoardcache/hoard/api"

	"github.com/spf13/cobra"
)

const (
	defaultHealthPort = 4000
	defaultIPAddress  = "127.0.0.1"
)

func NewHealthcheckCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "healthcheck",
		Short: "performs healthcheck",
		RunE:  healthcheck,
	}

	c.Flags().Uint16P("port", "p", defaultHealthPort, "hoard port")
	c.Flags().StringP("bindip", "b", defaultIPAddress, "hoard host binding ip address")

	return c
}

func healthcheck(cmd *cobra.Command, args []string) error {
	_ = args
	port, _ := cmd.Flags().GetUint16("port")
	bindIP, _ := cmd.Flags().GetString("bindip")

	resp, err := http.Get(fmt.Sprintf("http://%s%s",
		net.JoinHostPort(bindIP, fmt.Sprintf("%d", port)), api.PathCaches))
	if err != nil {
		fmt.Println("NOT OK")

		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Println("NOT OK")

		return fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	fmt.Println("OK")

	return nil
}

package socket

import (
	"net"
	"os"
	"strings"
)

const launchdPrefix = "launchd:"

// ParseAddress splits a listen address into address and network,
// "launchd:<name>" selects launchd socket activation
func ParseAddress(input string) (address, network string) {
	if strings.HasPrefix(input, launchdPrefix) {
		address = input[len(launchdPrefix):]
		network = "launchd"

		return
	}

	address = input
	network = ""

	return
}

// Listen creates a TCP listener for the passed address, launchd
// addresses are resolved to the socket configured under that name
func Listen(input string) (net.Listener, error) {
	address, network := ParseAddress(input)

	if network == "launchd" {
		fds, err := LaunchdSockets(address)
		if err != nil {
			return nil, err
		}

		return BuildListener(fds[0])
	}

	return net.Listen("tcp", address)
}

// BuildListener creates a listener from an activated socket file descriptor
func BuildListener(fd int) (net.Listener, error) {
	file := os.NewFile(uintptr(fd), "")

	return net.FileListener(file)
}

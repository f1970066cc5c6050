package robot

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptCredentials asks the operator for a login on the terminal. The
// password is read without echo. Fails when stdin is not a TTY so
// unattended runs surface the original auth error instead of hanging.
func promptCredentials() (user, pass string, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", "", fmt.Errorf("stdin is not a terminal, cannot prompt for login")
	}

	fmt.Fprint(os.Stderr, "Username: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}
	user = strings.TrimSpace(line)

	fmt.Fprint(os.Stderr, "Password: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	return user, string(secret), nil
}

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// DialTimeout bounds how long Translate waits for the server when ctx has
// no deadline of its own.
var DialTimeout = 2 * time.Second

// Translate sends one line to the server at socketPath and returns the
// converted text without the trailing newline.
func Translate(ctx context.Context, socketPath, text string) (string, error) {
	if strings.ContainsAny(text, "\r\n") {
		return "", errors.New("text must be a single line")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DialTimeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := fmt.Fprintln(conn, text); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}
	response, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("receive: %w", err)
	}
	return strings.TrimSuffix(response, "\n"), nil
}

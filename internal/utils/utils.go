package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

func NewInputUtils() *InputUtils {
	return &InputUtils{In: os.Stdin, Out: os.Stdout}
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.Out, "%s (y/N): ", message)

	response, _ := bufio.NewReader(i.In).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
)

type commandRequest struct {
	Payload  string `json:"payload"`
	Password string `json:"password"`
}

// NewCommandInterpreter returns an Interpreter that runs the given external
// command for every decryption. The command reads a JSON object
// {"payload", "password"} from stdin and writes the decrypted wallet
// document to stdout. A non zero exit status is reported as a failure with
// the content of stderr.
func NewCommandInterpreter(name string, args ...string) Interpreter {
	return InterpreterFunc(func(
		cypherText, password string,
		onSuccess func(string), onFailure func(string),
	) {
		stdin, err := json.Marshal(commandRequest{cypherText, password})
		if err != nil {
			onFailure(err.Error())
			return
		}

		var stdout, stderr bytes.Buffer
		cmd := exec.Command(name, args...)
		cmd.Stdin = bytes.NewReader(stdin)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			reason := strings.TrimSpace(stderr.String())
			var exitErr *exec.ExitError
			if len(reason) <= 0 || !errors.As(err, &exitErr) {
				reason = err.Error()
			}
			onFailure(reason)
			return
		}
		onSuccess(strings.TrimSpace(stdout.String()))
	})
}

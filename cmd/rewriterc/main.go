// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"gitlab.com/tozd/go/errors"
)

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	cmd, err := NewRootCmd(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(commands.ExitFailed)
	}

	os.Exit(execute(context.Background(), cmd))
}

// execute runs the command tree and maps its error to an exit code
func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return commands.ExitOK
	}

	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
	return commands.ExitFailed
}

// Command nexora exports report views from the configured company store.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd(storeOpener{}).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"courseportal-backend/cmd/portal-cli/commands"
	"courseportal-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "portal-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}

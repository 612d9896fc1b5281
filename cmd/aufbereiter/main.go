// Command aufbereiter prepares German text for TTS narration.
package main

import (
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}

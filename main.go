package main

import "github.com/LegacyCodeHQ/deadfiles/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/roxydental/roxydental_backend/cmd"

func main() {
	cmd.Execute()
}

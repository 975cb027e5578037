package main

import "github.com/user/rankbot/cmd"

func main() {
	cmd.Execute()
}

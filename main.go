package main

import "github.com/zjkal/web3-model/cmd"

func main() {
	cmd.Execute()
}

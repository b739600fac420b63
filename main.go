package main

import "github.com/iamshubha/roy-dex-sub005/cmd"

func main() {
	cmd.Execute()
}

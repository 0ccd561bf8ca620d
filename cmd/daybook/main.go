package main

import "github.com/sandeepkv93/daybook/cmd/daybook/root"

func main() {
	root.Execute()
}

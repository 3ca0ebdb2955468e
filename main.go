package main

import (
	"fmt"
	"os"

	"github.com/ZeroLiu2018/mcbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

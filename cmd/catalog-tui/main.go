package main

import "github.com/Lixing-Zhang/course-catalog/internal/cli"

func main() {
	cli.Execute()
}

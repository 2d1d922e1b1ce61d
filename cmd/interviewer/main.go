package main

import "github.com/interviewer/backend/internal/cli"

// @title           Interviewer API
// @version         1.0
// @description     Interview preparation guides with per-question self-assessment statistics and weighted interviews.

// @host      localhost:8080
// @BasePath  /

func main() {
	cli.Execute()
}

package main

import "github.com/shouni/go-jaundice/cmd"

// main 関数は、CLIのエントリポイントです。実際の処理はすべて cmd パッケージに委譲します。
func main() {
	cmd.Execute()
}

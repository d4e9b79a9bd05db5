// Hakija - AWS resource resolution filters
// Ask by tag, get an identifier back.
package main

func main() {
	Execute()
}

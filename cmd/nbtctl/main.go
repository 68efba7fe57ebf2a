// Command nbtctl inspects and edits NBT files.
package main

func main() {
	execute()
}

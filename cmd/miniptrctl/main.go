// Command miniptrctl exercises the miniptr pools from the command line:
// it prints size class tables, replays random slab workloads, and runs
// scripted slice pool workloads.
package main

func main() {
	execute()
}

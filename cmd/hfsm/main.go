// Command hfsm inspects declarative state machine definitions.
package main

func main() {
	Execute()
}

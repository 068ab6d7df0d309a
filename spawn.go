package forkjoin

// Spawn runs body and returns once it has finished.
//
// On a real pool Spawn returns immediately and body runs later on some
// worker. Here body runs before Spawn returns, so its effects are visible
// to the caller right away. Code that spawns to bound stack depth (a
// spawn-per-step trampoline) recurses instead; it needs an explicit work
// queue to run in constant stack space.
func Spawn(body func()) {
	body()
}

// SpawnFifo is identical to [Spawn].
func SpawnFifo(body func()) {
	body()
}

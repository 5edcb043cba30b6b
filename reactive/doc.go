// Package reactive implements the dependency graph and effect engine: Deps,
// Links, Subscribers, Effects, Derived values, Scopes, and the batch
// scheduler that ties them together.
//
// The graph is two doubly-linked lists threaded through one Link record per
// edge, following the same splice discipline as the alien-signals family of
// reactive systems: a Dep owns its subscriber list, a Subscriber owns its
// dep list, and a Link is the single edge shared by both.
package reactive

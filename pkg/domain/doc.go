/*
Package domain contains the core contracts and data model of the arbor search engine.

It defines what a search domain has to provide and what a finished search hands
back. The package is kept pure and free of I/O, logging or rendering concerns.

# Key Entities

  - State: the capability contract (canonical Key and Children) a domain implements.
  - Heuristic: the caller-supplied estimate of the remaining cost to the goal.
  - Result: the frozen outcome of a successful search (path, scores, parents, visit ranks).
  - SearchHooks: observability callbacks fired while the engine runs.
*/
package domain

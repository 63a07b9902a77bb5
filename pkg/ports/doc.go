/*
Package ports defines the driven ports (interfaces) for the ntm engine.

These interfaces decouple the simulation core from the places machine definitions
live, allowing the engine to read machines from memory, plain files, or a Loam
document library.

# Key Interfaces

  - MachineLoader: Responsible for loading raw machine definitions and their format.
*/
package ports

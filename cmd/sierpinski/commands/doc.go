// Package commands defines the sierpinski CLI.
//
// Commands
//
//   - glb       Generate a Sierpinski tetrahedron and write it as .glb
//   - pack      Generate several levels into one .sierpack container
//   - pack2glb  Convert a .sierpack into a .glb with one node per entry
//   - unpack    Write every entry of a .sierpack as its own .glb
//   - info      Summarise the entries of a .sierpack
//
// Flag defaults come from SIERPINSKI_* environment variables (see
// internal/config); flags given on the command line win.
package commands

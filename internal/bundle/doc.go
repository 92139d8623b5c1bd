// SPDX-License-Identifier: MPL-2.0

// Package bundle compresses a raw plugin build output into a single ZIP
// archive, using a platform-specific strategy to keep the metadata that
// platform's plugin hosts depend on.
//
// Windows build outputs are a single renamed dynamic library; ordinary
// compression is enough because Windows loadable binaries carry no POSIX
// permission bits or symbolic links. macOS build outputs are a .vst3
// directory bundle whose inner binary must keep its executable bit and
// whose symbolic links must stay links — an archive that drops either is
// structurally valid but silently broken: the host refuses to load the
// plugin only after the end user has already downloaded it.
package bundle

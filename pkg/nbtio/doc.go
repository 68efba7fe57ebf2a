// Package nbtio reads and writes NBT trees as files and streams.
//
// It is the glue between the pure in-memory codec in package nbt and the
// outside world: files are memory-mapped, the gzip/zlib framing is detected
// and stripped, and writes go through a temp file and an atomic rename.
//
//	f, err := nbtio.ReadFile("level.dat", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.Tree.Key("Data").Key("hardcore").Set(nbt.Bool(true))
//	err = f.Save(nil)
//
// The compression a file was read with is remembered, so Save writes it
// back the same way unless told otherwise.
package nbtio

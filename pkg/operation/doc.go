/*
Package operation implements the copy at the heart of x2cwd.

	+-------------+       +-------------+       +--------------+
	|   Config    | ----> |    Walk     | ----> |   copyFile   |
	| (immutable) |       | (pre-order) |       | (remove+copy)|
	+-------------+       +------+------+       +--------------+
	                             |
	                      +------+------+
	                      |  ensureDir  |
	                      | (one level) |
	                      +-------------+

🎯 Purpose:
- Mirrors the directory holding the executable into the working directory
- Skips the executable itself in every directory it visits
- Overwrites destination files unconditionally

🔄 Flow:
1. Validate the config and pick a filesystem (read-only when simulating)
2. Flat mode lists the source directory once; recursive mode walks it
3. Each visited directory is mapped by relative path onto the destination
   and created if missing
4. Each regular file is logged, then (unless simulating) the old copy is
   removed and the contents are written

⚡ Guarantees:
- Parents are handled before children, so Mkdir never needs to create more
  than one level
- The first error stops the run; nothing already copied is rolled back
- Everything runs on the calling goroutine

🔍 Example:

	op := operation.NewCopyOperation(operation.Options{
		Config: cfg,
		Fs:     afero.NewOsFs(),
		Logger: log.New(ctx, os.Stdout, cfg.Verbose),
	})
	result, err := op.Execute(ctx)
*/
package operation

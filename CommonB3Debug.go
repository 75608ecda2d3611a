//go:build box3d_debug

package box3d

/// Debug builds validate the whole tree after every structural mutation.
const B3DEBUG = true

//go:build !box3d_debug

package box3d

const B3DEBUG = false

package aper

// maxConstrainedLength is the boundary at which a length determinant
// stops being encodable as a constrained whole number and falls back
// to the general length-determinant procedure. ITU-T X.691 §11.9.3.3.
const maxConstrainedLength = 65536 // 64K

// fragmentUnit is the element count of one fragmentation unit.
// ITU-T X.691 §11.9.3.8.
const fragmentUnit = 16384 // 16K

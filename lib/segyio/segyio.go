/*package segyio contains functions for reading SEG-Y files with random access.

A SEG-Y file is a 3200-byte text header, a 400-byte binary header, any number
of 3200-byte extended text headers, and then a sequence of traces. Each trace
is a 240-byte trace header, any number of 240-byte extended trace headers, and
a block of samples. segyio assumes that every trace has the same number of
samples and extended headers, so the offset of any trace can be computed from
the binary header alone:

   offset(i) = 3200*(1 + extendedTextHeaders) + 400 + i*traceBlockSize

Only the binary header is read when a file is opened. Text headers, traces,
and navigation are read on demand.
*/
package segyio

// Package protocol implements the messages exchanged with flip-dot signs on a shared bus.
//
// Messages travel in ASCII frames similar to Intel HEX records:
//
//	:LLAAAATT<data>CC\r\n
//
// LL is the number of data bytes, AAAA the 16-bit address, TT the message type and CC the
// two's complement of the sum of all preceding bytes. All fields are upper case hexadecimal.
package protocol

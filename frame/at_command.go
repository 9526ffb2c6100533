package frame

import "fmt"

// ATCmd is a two-character AT command mnemonic, e.g. "NI" or "DH".
type ATCmd [2]byte

func (c ATCmd) String() string { return string(c[:]) }

// ATStatus is the outcome byte of an AT_COMMAND_RESPONSE.
type ATStatus byte

// Recognized AT command statuses.
const (
	ATStatusOK               ATStatus = 0
	ATStatusError            ATStatus = 1
	ATStatusInvalidCommand   ATStatus = 2
	ATStatusInvalidParameter ATStatus = 3
	ATStatusTXFailure        ATStatus = 4
)

func (s ATStatus) String() string {
	switch s {
	case ATStatusOK:
		return "OK"
	case ATStatusError:
		return "Error"
	case ATStatusInvalidCommand:
		return "InvalidCommand"
	case ATStatusInvalidParameter:
		return "InvalidParameter"
	case ATStatusTXFailure:
		return "TXFailure"
	}
	return fmt.Sprintf("ATStatus(%d)", byte(s))
}

const minATCommandLen = 4

// ATCommand is frame type 0x08: an AT command request.
type ATCommand struct {
	FrameID FrameID
	Command ATCmd
	Param   []byte
}

// Type implements Frame.
func (f ATCommand) Type() Type { return TypeATCommand }

// Encode implements Frame.
func (f ATCommand) Encode() []byte {
	return encodeATRequest(TypeATCommand, f.FrameID, f.Command, f.Param)
}

func decodeATCommand(b []byte) (Frame, error) {
	if len(b) < minATCommandLen {
		return nil, shortPayloadErr(TypeATCommand, len(b), minATCommandLen)
	}
	return ATCommand{
		FrameID: FrameID(b[1]),
		Command: ATCmd{b[2], b[3]},
		Param:   cloneTail(b, 4),
	}, nil
}

// ATCommandQueue is frame type 0x09: queue an AT command, applied on
// the next AT_COMMAND or explicit "apply changes" command.
type ATCommandQueue struct {
	FrameID FrameID
	Command ATCmd
	Param   []byte
}

// Type implements Frame.
func (f ATCommandQueue) Type() Type { return TypeATCommandQueue }

// Encode implements Frame.
func (f ATCommandQueue) Encode() []byte {
	return encodeATRequest(TypeATCommandQueue, f.FrameID, f.Command, f.Param)
}

func decodeATCommandQueue(b []byte) (Frame, error) {
	if len(b) < minATCommandLen {
		return nil, shortPayloadErr(TypeATCommandQueue, len(b), minATCommandLen)
	}
	return ATCommandQueue{
		FrameID: FrameID(b[1]),
		Command: ATCmd{b[2], b[3]},
		Param:   cloneTail(b, 4),
	}, nil
}

func encodeATRequest(t Type, id FrameID, cmd ATCmd, param []byte) []byte {
	out := make([]byte, 4, 4+len(param))
	out[0] = byte(t)
	out[1] = byte(id)
	out[2], out[3] = cmd[0], cmd[1]
	return append(out, param...)
}

const minATCommandResponseLen = 5

// ATCommandResponse is frame type 0x88.
type ATCommandResponse struct {
	FrameID FrameID
	Command ATCmd
	Status  ATStatus
	Value   []byte
}

// Type implements Frame.
func (f ATCommandResponse) Type() Type { return TypeATCommandResponse }

// Encode implements Frame.
func (f ATCommandResponse) Encode() []byte {
	out := make([]byte, 5, 5+len(f.Value))
	out[0] = byte(TypeATCommandResponse)
	out[1] = byte(f.FrameID)
	out[2], out[3] = f.Command[0], f.Command[1]
	out[4] = byte(f.Status)
	return append(out, f.Value...)
}

func decodeATCommandResponse(b []byte) (Frame, error) {
	if len(b) < minATCommandResponseLen {
		return nil, shortPayloadErr(TypeATCommandResponse, len(b), minATCommandResponseLen)
	}
	return ATCommandResponse{
		FrameID: FrameID(b[1]),
		Command: ATCmd{b[2], b[3]},
		Status:  ATStatus(b[4]),
		Value:   cloneTail(b, 5),
	}, nil
}

const minRemoteATCommandRequestLen = 15

// RemoteATRequestOption bit flags carried in a remote AT request.
type RemoteATRequestOption byte

// Recognized remote AT request options.
const (
	RemoteATApplyChanges RemoteATRequestOption = 0x02
)

// RemoteATCommandRequest is frame type 0x17.
type RemoteATCommandRequest struct {
	FrameID FrameID
	Dest64  Address64
	Dest16  Address16
	Options RemoteATRequestOption
	Command ATCmd
	Param   []byte
}

// Type implements Frame.
func (f RemoteATCommandRequest) Type() Type { return TypeRemoteATCommandRequest }

// Encode implements Frame.
func (f RemoteATCommandRequest) Encode() []byte {
	out := make([]byte, 0, minRemoteATCommandRequestLen+len(f.Param))
	out = append(out, byte(TypeRemoteATCommandRequest), byte(f.FrameID))
	out = append(out, f.Dest64.Bytes()...)
	out = append(out, f.Dest16.Bytes()...)
	out = append(out, byte(f.Options), f.Command[0], f.Command[1])
	return append(out, f.Param...)
}

func decodeRemoteATCommandRequest(b []byte) (Frame, error) {
	if len(b) < minRemoteATCommandRequestLen {
		return nil, shortPayloadErr(TypeRemoteATCommandRequest, len(b), minRemoteATCommandRequestLen)
	}
	return RemoteATCommandRequest{
		FrameID: FrameID(b[1]),
		Dest64:  DecodeAddress64(b[2:10]),
		Dest16:  DecodeAddress16(b[10:12]),
		Options: RemoteATRequestOption(b[12]),
		Command: ATCmd{b[13], b[14]},
		Param:   cloneTail(b, 15),
	}, nil
}

const minRemoteATCommandResponseLen = 15

// RemoteATCommandResponse is frame type 0x97.
type RemoteATCommandResponse struct {
	FrameID FrameID
	Src64   Address64
	Src16   Address16
	Command ATCmd
	Status  ATStatus
	Value   []byte
}

// Type implements Frame.
func (f RemoteATCommandResponse) Type() Type { return TypeRemoteATCommandResponse }

// Encode implements Frame.
func (f RemoteATCommandResponse) Encode() []byte {
	out := make([]byte, 0, minRemoteATCommandResponseLen+len(f.Value))
	out = append(out, byte(TypeRemoteATCommandResponse), byte(f.FrameID))
	out = append(out, f.Src64.Bytes()...)
	out = append(out, f.Src16.Bytes()...)
	out = append(out, f.Command[0], f.Command[1], byte(f.Status))
	return append(out, f.Value...)
}

func decodeRemoteATCommandResponse(b []byte) (Frame, error) {
	if len(b) < minRemoteATCommandResponseLen {
		return nil, shortPayloadErr(TypeRemoteATCommandResponse, len(b), minRemoteATCommandResponseLen)
	}
	return RemoteATCommandResponse{
		FrameID: FrameID(b[1]),
		Src64:   DecodeAddress64(b[2:10]),
		Src16:   DecodeAddress16(b[10:12]),
		Command: ATCmd{b[12], b[13]},
		Status:  ATStatus(b[14]),
		Value:   cloneTail(b, 15),
	}, nil
}

// cloneTail returns a defensive copy of b[from:], or nil if there is
// nothing left (so zero-length optional fields compare equal to their
// zero value after a round trip).
func cloneTail(b []byte, from int) []byte {
	if from >= len(b) {
		return nil
	}
	return append([]byte(nil), b[from:]...)
}

package state

var (
	rentalAdminKeyBytes   = []byte("rental/admin")
	rentalBalanceKeyBytes = []byte("rental/contract-balance")
	rentalCarPrefix       = []byte("rental/car/")
	rentalRecordPrefix    = []byte("rental/record/")
	accountPrefix         = []byte("account/")
)

func carKey(owner [20]byte) []byte {
	buf := make([]byte, 0, len(rentalCarPrefix)+len(owner))
	buf = append(buf, rentalCarPrefix...)
	return append(buf, owner[:]...)
}

func rentalRecordKey(renter, owner [20]byte) []byte {
	buf := make([]byte, 0, len(rentalRecordPrefix)+len(renter)+1+len(owner))
	buf = append(buf, rentalRecordPrefix...)
	buf = append(buf, renter[:]...)
	buf = append(buf, ':')
	return append(buf, owner[:]...)
}

func accountKey(addr [20]byte) []byte {
	buf := make([]byte, 0, len(accountPrefix)+len(addr))
	buf = append(buf, accountPrefix...)
	return append(buf, addr[:]...)
}

package service

// The two reconciliation tables are fixed and known at synthesis time; no
// schema discovery happens at runtime. Both sides key on PSPREFERENCE.
const schemaDDL = `CREATE TABLE [AdyenPaymentTransaction] (
    [PSPREFERENCE] NVARCHAR(255) NOT NULL,
    [MERCHANTREFERENCE] NVARCHAR(255) NULL,
    [TRANSACTIONDATETIME] DATETIME NULL,
    [TIMEZONE] NVARCHAR(255) NULL,
    [PAYMENTAMOUNT] DECIMAL(10, 2) NULL,
    [CURRENCY] NVARCHAR(255) NULL,
    [PAYMENTMETHOD] NVARCHAR(50) NULL,
    [PAYMENTSTATUS] NVARCHAR(20) NULL,
    [RISKSCORE] INTEGER NULL,
    CONSTRAINT [PK__AdyenPay__167A345A1489B7D8] PRIMARY KEY ([PSPREFERENCE])
)

/*
3 rows from AdyenPaymentTransaction table:
PSPREFERENCE	MERCHANTREFERENCE	TRANSACTIONDATETIME	TIMEZONE	PAYMENTAMOUNT	CURRENCY	PAYMENTMETHOD	PAYMENTSTATUS	RISKSCORE
B25KD5G9X5STZK65	cfdcccacc90d4a84a20d313c680133fa	2024-04-16 17:57:00	IST	185.94	USD	unknown card	Refused	0
B3J7GSMB4FVJK8V5	c33ad9b319544586b2cb9def832aa6f5	2024-07-08 10:35:00	IST	17.25	USD	Visa	Cancelled	1
B4WPLLG2DTPRCK65	3a97f78e98714365a402f36d12ecc5cb	2024-07-12 11:45:00	IST	66.44	USD	Visa	Cancelled	1
*/

CREATE TABLE [BankPaymentTransaction] (
    [STORENUMBER] INTEGER NULL,
    [CHANNELNAME] VARCHAR(255) NULL,
    [LAST4DIGITS] CHAR(4) NULL,
    [CARDID] NVARCHAR(255) NULL,
    [TRANSACTIONNUMBER] NVARCHAR(255) NULL,
    [TRANSACTIONDATETIME] DATETIME NULL,
    [CAPTUREDAMOUNT] DECIMAL(10, 2) NULL,
    [TRANSACTIONTYPE] NVARCHAR(50) NULL,
    [PSPREFERENCE] NVARCHAR(255) NOT NULL,
    [PAYMENTMETHOD] NVARCHAR(255) NULL,
    [SETTLEMENTDATE] DATE NULL,
    [SETTLEMENTID] NVARCHAR(255) NULL,
    [MERCHANTID] NVARCHAR(255) NULL,
    [GROSSAMOUNT] DECIMAL(10, 2) NULL,
    [TRANSACTIONFEES] DECIMAL(10, 2) NULL,
    [NETAMOUNT] DECIMAL(10, 2) NULL,
    [CURRENCY] NVARCHAR(10) NULL,
    [DEPOSITAMOUNT] DECIMAL(10, 2) NULL,
    [DEPOSITDATE] DATE NULL,
    [BANKACCOUNTNUMBER] NVARCHAR(255) NULL,
    [REFERENCENUMBER] NVARCHAR(255) NULL,
    [PAYMENTPROVIDER] NVARCHAR(255) NULL,
    [BATCHNUMBER] NVARCHAR(255) NULL,
    CONSTRAINT [PK__BankPaym__2CABD762F33B242E] PRIMARY KEY ([PSPREFERENCE])
)

/*
3 rows from BankPaymentTransaction table:
STORENUMBER	CHANNELNAME	TRANSACTIONNUMBER	TRANSACTIONDATETIME	CAPTUREDAMOUNT	TRANSACTIONTYPE	PSPREFERENCE	PAYMENTMETHOD	SETTLEMENTDATE
5425	Fabrikam call center	d3271376228543029d0bd99f9a9224a4	2024-07-17 06:44:59	28.82	Authorize	BMXXCC9MFC3GDXT5	CreditCard	2024-10-14
5413	Fabrikam call center	090178b06d65458e87e67e66092e63d8	2024-07-17 06:59:49	28.82	Capture	D44GVXL969NKGK82	CreditCard	2024-10-14
5415	Fabrikam call center	090178b06d65458e87e67e66092e63d8s	2024-07-17 06:59:49	38.99	Capture	D44GVXL969NKGK84	CreditCard	2024-10-14
*/`

const distinctValueHints = `Distinct TRANSACTIONTYPE in BankPaymentTransaction: Authorize, Void, Capture
Distinct PAYMENTSTATUS in AdyenPaymentTransaction: Refused, Settled, Cancelled, SettledExternally, Authorised`

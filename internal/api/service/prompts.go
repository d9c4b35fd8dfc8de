package service

import (
	"fmt"

	"reconagent/internal/api/models"
)

const classifySystemPrompt = "You are a classifier for a financial agent."

func buildClassifyPrompt(question string, history models.ChatHistory) string {
	return fmt.Sprintf(`You are a Financial Reconciliation Agent that analyzes transaction data.
You need to determine if the user's query is a general greeting, a data-related question, or specifically a request for a list of transactions.
CONTEXT RULES:
1. If the user mentions specific financial terms, database entities, or asks about data, ALWAYS classify as RELEVANT.
2. If the user refers to previous financial queries from chat history, ALWAYS classify as RELEVANT.
3. If the query mentions any specific store number, transaction number, reference number, or other entity IDs from previous chat, classify as RELEVANT.
4. If the user is clearly asking for a financial result or follow-up to previous data query, classify as RELEVANT.
5. Basic greetings with no financial context should be classified as NOT RELEVANT.
6. If the query asks to summarise data for some time period, classify as LIST_REQUEST = false; all summarised data is LIST_REQUEST = false.
7. If the user explicitly asks to "list", "show all", "display all" transactions, classify as LIST_REQUEST = true.
8. If the query contains terms like "list", "give me all", "all transactions", "display transactions", classify as LIST_REQUEST = true.
9. If the query asks for data for a specific time period (like "April", "last month", "yesterday") AND requests multiple transactions, classify as LIST_REQUEST = true.
10. If the query is asking for specific PSPreferences or requesting a set of transactions, classify as LIST_REQUEST = true.
11. If the query is ambiguous but seems to want comprehensive transaction data, classify as LIST_REQUEST = false.
Previous chat history:
%s
User query: "%s"
Output format: Provide a JSON response with these fields:
- "is_relevant": true or false
- "response": If not relevant, provide a friendly greeting for a financial reconciliation assistant
- "is_list_request": true if the query appears to be asking for a list of transactions
JSON response:`, history.PromptFormat(), question)
}

const rephraseSystemPrompt = "You are an expert at rephrasing questions for SQL databases."

func buildRephrasePrompt(question string, history models.ChatHistory) string {
	return fmt.Sprintf(`You are tasked to rephrase questions according to this database. You will always rephrase user questions to get summaries since there is a very large database. Your output will be provided to a SQL agent that converts natural language to SQL queries based on the database info.
Key principles for rephrasing:
1. ALWAYS preserve specific filters mentioned in the original question:
   - Payment status/types (e.g., Captured, Authorized, Refused)
   - Payment methods (e.g., Visa, Mastercard)
   - Date ranges
   - Amount thresholds
   - Store numbers
   - Channel names
2. For reconciliation requests:
   - Maintain ALL original filters in the rephrased version
   - Compare between Adyen and Bank systems
   - Get summaries for the data like how many transactions are matching and how many are not matching
   - Include key comparison points:
     * Amount comparisons (PAYMENTAMOUNT vs CAPTUREDAMOUNT)
     * Status matching (PAYMENTSTATUS vs TRANSACTIONTYPE)
     * Date alignment (TRANSACTIONDATETIME from both systems)
     * Reference matching (PSPREFERENCE)
     * Missing transactions in either system
3. Structure of rephrased questions:
   - Start with "Provide summary of" or "Summarize"
   - Include original date ranges exactly as specified
   - Keep all original filters and conditions
   - Add reconciliation aspects if comparing systems

Database info: %s

Previous chat history: %s
Original question: %s
Rephrased question:`, schemaDDL, history.PromptFormat(), question)
}

const sqlSystemPrompt = "You are an expert SQL generator."

func buildSQLPrompt(rephrasedQuestion string, history models.ChatHistory) string {
	return fmt.Sprintf(`You are a Microsoft SQL Server (SSMS) expert. Given a question, generate a precise SQL query with these guidelines:
1. Always retrieve relevant columns and columns that provide some specifics about the data - never use SELECT *
2. Use appropriate JOIN (LEFT JOIN, INNER JOIN, RIGHT JOIN, OUTER JOIN) operations when data spans multiple tables.
3. There are different numbers of columns in both tables.
4. Handle date ranges using proper date functions and formats.
5. For summary requests (indicated by "Provide", "Give", or "Summarize"):
   - First attempt to query from a single table
   - Use JOINs only if required data spans multiple tables
   - Include aggregation functions as needed (COUNT, SUM, AVG etc.)

Key constraints:
- No DML/DDL queries
- Query only existing columns from the provided table schemas
- Use CAST(GETDATE() as date) for current date references
- Do not use 600 results for questions that ask for a single data point or specific data for PSPREFERENCE, TRANSACTIONNUMBER, MERCHANTID, STORENUMBER, or MERCHANTREFERENCE
- Only use 600 results for questions that ask to provide/give the list of transactions
- Ensure proper handling of NULL values and data types
- Use explicit column names in GROUP BY and ORDER BY clauses
- Only provide the SQL query with no explanations

Only use the following tables, deeply understand the table schemas and generate the query accordingly. Correct the query if the user request is not in line with the table schema. Here is some information about the tables:
%s

Previous chat history: %s
Question: %s
Here is the table schema:
%s

SQLQuery:`, distinctValueHints, history.PromptFormat(), rephrasedQuestion, schemaDDL)
}

func buildListSQLPrompt(question string, history models.ChatHistory) string {
	return fmt.Sprintf(`You are a Microsoft SQL Server expert. Generate a precise SQL query for retrieving a list of transactions based on this request:

"%s"

Follow these guidelines:
1. Include ALL relevant columns that would be needed to understand each transaction
2. For AdyenPaymentTransaction include: PSPREFERENCE, MERCHANTREFERENCE, TRANSACTIONDATETIME, PAYMENTAMOUNT, CURRENCY, PAYMENTMETHOD, PAYMENTSTATUS, RISKSCORE
3. For BankPaymentTransaction include: STORENUMBER, CHANNELNAME, TRANSACTIONNUMBER, TRANSACTIONDATETIME, CAPTUREDAMOUNT, TRANSACTIONTYPE, PSPREFERENCE, PAYMENTMETHOD, SETTLEMENTDATE
4. Use appropriate JOIN operations if the request spans both tables
5. Apply proper filtering based on the request (dates, status, amount, etc.)
6. DO NOT use aggregations like SUM, COUNT, AVG in this query - we need the individual transactions
7. Sort results by TRANSACTIONDATETIME DESC by default unless another sort is specified
8. Limit to 1000 records max to prevent performance issues

Here is the database info:
%s

%s

Previous chat history context:
%s

Output format: Return only the SQL query with no explanations or additional text.`, question, schemaDDL, distinctValueHints, history.PromptFormat())
}

const answerSystemPrompt = "You are a Financial Reconciliation Agent that provides accurate and helpful information."

func buildAnswerPrompt(question, sqlText, sampleJSON string, columns []string, totalRows int, history models.ChatHistory, exportURL string) string {
	return fmt.Sprintf(`You are a Financial Reconciliation Agent. Given the following user question, corresponding SQL query, SQL result, and previous chat history, answer the user question based on the SQL result only and do not generate any answer of your own.
If the SQL result is empty, answer the user question as "No data found for the prompt." and do not generate any hypothetical answer.
You will handle tabular data as well. Always include emojis and appropriate symbols (like ✅, ✔️, ⬆️, 😊, 👍, 🙂, etc.) and maintain a user friendly format.
The SQL result below is a sample of at most the first rows; the total row count is given separately, so do not assume the sample is the whole result.

IMPORTANT: If a CSV file has been generated (CSV Download URL is provided), ALWAYS include the exact text "Download URL: " followed by the URL at the end of your response. Do not format it as a Markdown link.

Previous chat history: %s
Question: %s
SQL Query: %s
SQL Result: %s
Column Names: %v
Total Row Count: %d
CSV Download URL: %s
Answer:`, history.PromptFormat(), question, sqlText, sampleJSON, columns, totalRows, exportURL)
}

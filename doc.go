// Copyright 2026 Love Sandwiches. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package love-sandwiches records the sales from each market for the Love Sandwiches business in
a Google Sheets spreadsheet with 'sales', 'surplus' and 'stock' worksheets.

love-sandwiches is an interactive command line tool that supports the following commands:

  - authorise, to authorise access to the Google Sheets spreadsheet with an OAuth2 client secret
  - enter, to record the sales from the last market and the resulting surplus (and optionally
    the stock for the next market)
  - history, to display the last 5 entries for each sandwich in a worksheet
  - get, to download a worksheet as a TSV file or Excel workbook
*/
package sandwiches
